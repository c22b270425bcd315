package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{
			name:    "Pretty format",
			format:  "pretty",
			wantErr: false,
		},
		{
			name:    "CSV format",
			format:  "csv",
			wantErr: false,
		},
		{
			name:    "Unknown format",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "Empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
