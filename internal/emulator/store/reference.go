package store

import (
	"fmt"
	"os"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/models"
	"gopkg.in/yaml.v3"
)

// DefaultSeed returns the reference data used when no seed file is given.
func DefaultSeed() models.Seed {
	return models.Seed{
		JournalTypes: []models.JournalType{
			{Kode: "JU", Nama: "Jurnal Umum"},
			{Kode: "JK", Nama: "Jurnal Kas"},
			{Kode: "JB", Nama: "Jurnal Bank"},
		},
		Branches: []models.Branch{
			{DepCode: "PST", DepName: "Kantor Pusat"},
			{DepCode: "CB1", DepName: "Cabang 1"},
		},
		Chart: []models.ChartAccount{
			{AccountCode: "1101", AccountName: "Kas"},
			{AccountCode: "1102", AccountName: "Bank"},
			{AccountCode: "1201", AccountName: "Piutang Usaha"},
			{AccountCode: "2101", AccountName: "Utang Usaha"},
			{AccountCode: "3101", AccountName: "Modal"},
			{AccountCode: "4101", AccountName: "Pendapatan"},
			{AccountCode: "5101", AccountName: "Beban Gaji"},
			{AccountCode: "5102", AccountName: "Beban Sewa"},
		},
	}
}

// LoadSeed reads reference data from a YAML file.
func LoadSeed(path string) (models.Seed, error) {
	var seed models.Seed

	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(seed.Chart) == 0 {
		return seed, fmt.Errorf("seed file %s has no chart of accounts", path)
	}

	return seed, nil
}

// Seed replaces the stored reference data.
func (s *Store) Seed(seed models.Seed) error {
	if err := s.putJSON(BucketReference, keyJournalTypes, seed.JournalTypes); err != nil {
		return fmt.Errorf("failed to seed journal types: %w", err)
	}
	if err := s.putJSON(BucketReference, keyBranches, seed.Branches); err != nil {
		return fmt.Errorf("failed to seed branches: %w", err)
	}
	if err := s.putJSON(BucketReference, keyChart, seed.Chart); err != nil {
		return fmt.Errorf("failed to seed chart: %w", err)
	}
	return nil
}

// Seeded reports whether reference data has been stored.
func (s *Store) Seeded() (bool, error) {
	_, err := s.GetString(BucketReference, keyChart)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// JournalTypes returns the journal-type options.
func (s *Store) JournalTypes() ([]models.JournalType, error) {
	types := []models.JournalType{}
	if err := s.getJSON(BucketReference, keyJournalTypes, &types); err != nil && err != ErrNotFound {
		return nil, err
	}
	return types, nil
}

// Branches returns the branch options.
func (s *Store) Branches() ([]models.Branch, error) {
	branches := []models.Branch{}
	if err := s.getJSON(BucketReference, keyBranches, &branches); err != nil && err != ErrNotFound {
		return nil, err
	}
	return branches, nil
}

// Chart returns the chart of accounts.
func (s *Store) Chart() ([]models.ChartAccount, error) {
	chart := []models.ChartAccount{}
	if err := s.getJSON(BucketReference, keyChart, &chart); err != nil && err != ErrNotFound {
		return nil, err
	}
	return chart, nil
}
