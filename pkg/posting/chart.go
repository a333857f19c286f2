package posting

import "strings"

// Chart is a lookup over the chart of accounts. Journal lines may only
// reference accounts resolved through it.
type Chart struct {
	accounts []Account
	byCode   map[string]int
}

// NewChart builds a Chart. Later duplicates of a code are ignored.
func NewChart(accounts []Account) *Chart {
	c := &Chart{
		accounts: make([]Account, 0, len(accounts)),
		byCode:   make(map[string]int, len(accounts)),
	}
	for _, a := range accounts {
		code := strings.TrimSpace(a.Code)
		if code == "" {
			continue
		}
		if _, ok := c.byCode[code]; ok {
			continue
		}
		a.Code = code
		c.byCode[code] = len(c.accounts)
		c.accounts = append(c.accounts, a)
	}
	return c
}

// Resolve returns the account with the given code.
func (c *Chart) Resolve(code string) (*Account, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byCode[strings.TrimSpace(code)]
	if !ok {
		return nil, false
	}
	a := c.accounts[i]
	return &a, true
}

// Name returns the display name for code, or "" when unknown.
func (c *Chart) Name(code string) string {
	if a, ok := c.Resolve(code); ok {
		return a.Name
	}
	return ""
}

// Accounts returns a copy of the chart in its original order.
func (c *Chart) Accounts() []Account {
	if c == nil {
		return nil
	}
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Len returns the number of accounts.
func (c *Chart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.accounts)
}
