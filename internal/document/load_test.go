package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>Test</title></head><body><p>Hello 2017-09-01</p></body></html>`

func TestLoad(t *testing.T) {
	doc, err := Load(page, 0)
	require.NoError(t, err)
	assert.Equal(t, page, doc.Raw)
	assert.NotNil(t, htmlquery.FindOne(doc.Root, "//p"))
}

func TestLoadSizeCeiling(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxSize  int
		sentinel error
	}{
		{"empty", "", 0, ErrNoDocument},
		{"too small", "<p>x</p>", 0, ErrDocumentTooSmall},
		{"too large", page, 20, ErrDocumentTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.input, tt.maxSize)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), err.Error())
		})
	}

	_, err := Load(page, 20)
	assert.True(t, IsSizeError(err))
}

func TestLoadReader(t *testing.T) {
	doc, err := LoadReader(strings.NewReader(page), 0)
	require.NoError(t, err)
	assert.Equal(t, page, doc.Raw)

	_, err = LoadReader(strings.NewReader(page), 20)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)

	_, err = LoadReader(nil, 0)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestFromNode(t *testing.T) {
	root, err := htmlquery.Parse(strings.NewReader(page))
	require.NoError(t, err)

	doc, err := FromNode(root, 0)
	require.NoError(t, err)
	assert.Contains(t, doc.Raw, "2017-09-01")
	assert.Same(t, root, doc.Root)

	_, err = FromNode(nil, 0)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestWrapError(t *testing.T) {
	base := errors.New("base error")
	wrapped := WrapError(base, ParseError, "TestFunc", "test message")

	assert.Contains(t, wrapped.Error(), "[parse:TestFunc]")
	assert.Contains(t, wrapped.Error(), "test message")
	assert.ErrorIs(t, wrapped, base)
	assert.True(t, IsParseError(wrapped))
	assert.False(t, IsSizeError(wrapped))
	assert.Nil(t, WrapError(nil, ParseError, "TestFunc", ""))
}
