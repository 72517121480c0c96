package importer

import (
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
)

func TestPreprocessOFX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips leading whitespace",
			input: "\n\t OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
		{
			name:  "uppercases severity values",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "closes dangling open tags",
			input: "<STMTTRN\n<TRNTYPE>DEBIT</TRNTYPE>",
			want:  "<STMTTRN>\n<TRNTYPE>DEBIT</TRNTYPE>",
		},
		{
			name:  "well formed content is untouched",
			input: "<TRNAMT>-25.50</TRNAMT>",
			want:  "<TRNAMT>-25.50</TRNAMT>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocessOFX(tt.input))
		})
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		tx   ofxgo.Transaction
		want string
	}{
		{
			name: "payee name wins",
			tx: ofxgo.Transaction{
				Payee: &ofxgo.Payee{Name: "UBER TRIP"},
				Name:  "raw name",
			},
			want: "UBER TRIP",
		},
		{
			name: "name field",
			tx:   ofxgo.Transaction{Name: "  NETFLIX.COM  "},
			want: "NETFLIX.COM",
		},
		{
			name: "memo fallback",
			tx:   ofxgo.Transaction{Memo: "card purchase"},
			want: "card purchase",
		},
		{
			name: "placeholder when everything is empty",
			tx:   ofxgo.Transaction{},
			want: "Imported Transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDescription(tt.tx))
		})
	}
}
