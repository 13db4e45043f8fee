package partner

import (
	"strings"

	"github.com/boutikla/backend/internal/domain/shared"
)

// Client is a customer of the store, referenced by sales, payments and refunds.
// There is no lifecycle beyond create/edit/delete.
type Client struct {
	shared.BaseEntity
	FirstName string
	LastName  string
	Emails    []string
	Phone     string
	Addresses []string
}

// NewClient creates a new client
func NewClient(firstName, lastName string, emails []string, phone string, addresses []string) (*Client, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client first name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client last name cannot be empty")
	}
	if err := validateEmails(emails); err != nil {
		return nil, err
	}

	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		FirstName:  firstName,
		LastName:   lastName,
		Emails:     normalizeList(emails),
		Phone:      phone,
		Addresses:  normalizeList(addresses),
	}, nil
}

// Update changes the client's identity and contact fields
func (c *Client) Update(firstName, lastName string, emails []string, phone string, addresses []string) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if err := validateEmails(emails); err != nil {
		return err
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Emails = normalizeList(emails)
	c.Phone = phone
	c.Addresses = normalizeList(addresses)
	c.Touch()
	return nil
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func validateEmails(emails []string) error {
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "@") {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email address: "+e)
		}
	}
	return nil
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
