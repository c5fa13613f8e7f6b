package domain

import (
	"encoding/json"
	"fmt"
)

// CompanyKind tags the variant held by a CompanyRef.
type CompanyKind string

const (
	CompanyPlain  CompanyKind = "plain"
	CompanyLinked CompanyKind = "linked"
)

// CompanyRef names a group company in the site footer. It is either Plain (a name)
// or Linked (a name with a website URL).
type CompanyRef struct {
	kind CompanyKind
	name string
	url  string
}

// PlainCompany returns a company reference without a link.
func PlainCompany(name string) CompanyRef {
	return CompanyRef{kind: CompanyPlain, name: name}
}

// LinkedCompany returns a company reference that links to url.
func LinkedCompany(name, url string) CompanyRef {
	return CompanyRef{kind: CompanyLinked, name: name, url: url}
}

func (c CompanyRef) Kind() CompanyKind { return c.kind }
func (c CompanyRef) Name() string      { return c.name }

// URL returns the link of a Linked reference. ok is false for Plain references.
func (c CompanyRef) URL() (url string, ok bool) {
	if c.kind != CompanyLinked {
		return "", false
	}
	return c.url, true
}

type companyRefJSON struct {
	Kind CompanyKind `json:"kind"`
	Name string      `json:"name"`
	URL  string      `json:"url,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (c CompanyRef) MarshalJSON() ([]byte, error) {
	if c.kind == "" {
		return nil, fmt.Errorf("company reference %q has no kind", c.name)
	}
	return json.Marshal(companyRefJSON{Kind: c.kind, Name: c.name, URL: c.url})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CompanyRef) UnmarshalJSON(data []byte) error {
	var raw companyRefJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ref, err := NewCompanyRef(raw.Kind, raw.Name, raw.URL)
	if err != nil {
		return err
	}
	*c = ref
	return nil
}

// NewCompanyRef builds a reference from its tagged parts.
func NewCompanyRef(kind CompanyKind, name, url string) (CompanyRef, error) {
	if name == "" {
		return CompanyRef{}, fmt.Errorf("company name is required")
	}
	switch kind {
	case CompanyPlain:
		if url != "" {
			return CompanyRef{}, fmt.Errorf("plain company %q must not carry a url", name)
		}
		return PlainCompany(name), nil
	case CompanyLinked:
		if url == "" {
			return CompanyRef{}, fmt.Errorf("linked company %q requires a url", name)
		}
		return LinkedCompany(name, url), nil
	default:
		return CompanyRef{}, fmt.Errorf("unknown company kind %q", kind)
	}
}
