package domain

import "time"

// Content types shipped with the intranet.
const (
	TypeArea   = "Area"
	TypePessoa = "Pessoa"
)

// Content is a content item stored in the portal.
type Content struct {
	UID            string
	ID             string
	ParentPath     string
	PortalType     string
	Title          string
	Description    string
	ExcludeFromNav bool
	Fields         map[string]string
	Creator        string
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

// Path returns the physical path of the item below the portal root.
func (c *Content) Path() string {
	return c.ParentPath + "/" + c.ID
}

// Field returns a type-specific field value, or "" when unset.
func (c *Content) Field(name string) string {
	if c.Fields == nil {
		return ""
	}
	return c.Fields[name]
}

// SetField sets a type-specific field. An empty value removes it.
func (c *Content) SetField(name, value string) {
	if value == "" {
		delete(c.Fields, name)
		return
	}
	if c.Fields == nil {
		c.Fields = make(map[string]string)
	}
	c.Fields[name] = value
}

// Clone returns a deep copy of the item.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Fields != nil {
		cp.Fields = make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			cp.Fields[k] = v
		}
	}
	return &cp
}
