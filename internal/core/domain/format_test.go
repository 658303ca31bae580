package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"txt", FormatTxt},
		{"plain-text", FormatTxt},
		{"htm", FormatHTML},
		{"xbrl", FormatXBRL},
		{"inline-xbrl", FormatIXBRL},
		{"pdf", FormatPDF},
		{"complete", FormatComplete},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, "txt", FormatTxt.Ext())
	assert.Equal(t, "htm", FormatHTML.Ext())
	assert.Equal(t, "xml", FormatXBRL.Ext())
	assert.Equal(t, "htm", FormatIXBRL.Ext())
	assert.Equal(t, "pdf", FormatPDF.Ext())
	assert.Equal(t, "zip", FormatComplete.Ext())
}

func TestAllowedFormats(t *testing.T) {
	// EDINET serves no html or plain text; EDGAR serves no pdf.
	assert.False(t, FormatHTML.AllowedIn(SourceEDINET))
	assert.False(t, FormatTxt.AllowedIn(SourceEDINET))
	assert.True(t, FormatPDF.AllowedIn(SourceEDINET))
	assert.True(t, FormatComplete.AllowedIn(SourceEDINET))

	assert.False(t, FormatPDF.AllowedIn(SourceEDGAR))
	assert.True(t, FormatTxt.AllowedIn(SourceEDGAR))
	assert.True(t, FormatIXBRL.AllowedIn(SourceEDGAR))
}
