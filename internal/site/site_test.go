package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatrade/internal/domain"
)

func TestParse(t *testing.T) {
	content, err := Parse([]byte(`
companies:
  - kind: plain
    name: Seatrade Cold Storage
  - kind: linked
    name: Seatrade Exports
    url: https://seatrade.example.com
`))
	require.NoError(t, err)
	require.Len(t, content.Companies, 2)

	assert.Equal(t, domain.CompanyPlain, content.Companies[0].Kind())
	_, ok := content.Companies[0].URL()
	assert.False(t, ok)

	url, ok := content.Companies[1].URL()
	assert.True(t, ok)
	assert.Equal(t, "https://seatrade.example.com", url)
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown kind":   "companies:\n  - kind: partner\n    name: X\n",
		"linked no url":  "companies:\n  - kind: linked\n    name: X\n",
		"plain with url": "companies:\n  - kind: plain\n    name: X\n    url: https://x\n",
		"unknown field":  "companys: []\n",
		"missing name":   "companies:\n  - kind: plain\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	content, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultContent(), content)

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies:\n  - kind: plain\n    name: Only\n"), 0o600))
	content, err = Load(path)
	require.NoError(t, err)
	require.Len(t, content.Companies, 1)
	assert.Equal(t, "Only", content.Companies[0].Name())
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	content, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, content.Companies)

	content, err = Parse([]byte("# nothing configured yet\n"))
	require.NoError(t, err)
	assert.Empty(t, content.Companies)
}
