// Package site loads the editable marketing content that is not stored in the
// database, such as the group companies listed in the footer.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"seatrade/internal/domain"
)

// Content is the parsed site content file.
type Content struct {
	Companies []domain.CompanyRef
}

type contentFile struct {
	Companies []companyEntry `yaml:"companies"`
}

type companyEntry struct {
	Kind domain.CompanyKind `yaml:"kind"`
	Name string             `yaml:"name"`
	URL  string             `yaml:"url,omitempty"`
}

// DefaultContent is served when no content file exists.
func DefaultContent() *Content {
	return &Content{
		Companies: []domain.CompanyRef{
			domain.LinkedCompany("Seatrade Exports", "https://seatrade.example.com"),
			domain.PlainCompany("Seatrade Cold Storage"),
			domain.PlainCompany("Seatrade Logistics"),
		},
	}
}

// Load reads the content file at path. A missing file yields DefaultContent.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[SITE] Content file %s not found, using defaults", path)
			return DefaultContent(), nil
		}
		return nil, fmt.Errorf("failed to read site content: %w", err)
	}
	content, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[SITE] Loaded %d companies from %s", len(content.Companies), path)
	return content, nil
}

// Parse decodes site content YAML. Unknown keys and unknown company kinds are rejected.
// An empty document yields no companies.
func Parse(data []byte) (*Content, error) {
	var raw contentFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	content := &Content{Companies: make([]domain.CompanyRef, 0, len(raw.Companies))}
	for i, entry := range raw.Companies {
		ref, err := domain.NewCompanyRef(entry.Kind, entry.Name, entry.URL)
		if err != nil {
			return nil, fmt.Errorf("companies[%d]: %w", i, err)
		}
		content.Companies = append(content.Companies, ref)
	}
	return content, nil
}
