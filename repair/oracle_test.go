package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracles(t *testing.T) {
	oracles := map[string]Oracle{
		OracleYAMLv3: YAMLv3Oracle{},
		OracleGoccy:  GoccyOracle{},
	}

	for name, oracle := range oracles {
		t.Run(name, func(t *testing.T) {
			v, err := oracle.Parse("a:\n  b: 1\nlist:\n  - x\n  - y")
			require.NoError(t, err)
			assert.NotNil(t, v)

			_, err = oracle.Parse("key: [1, 2\nother: 3")
			assert.Error(t, err)
		})
	}
}

func TestYAMLv3Oracle_RejectsDuplicateKeys(t *testing.T) {
	_, err := YAMLv3Oracle{}.Parse("name: foo\nname: bar")
	assert.Error(t, err)
}

func TestNewOracle(t *testing.T) {
	tests := []struct {
		name    string
		want    Oracle
		wantErr bool
	}{
		{name: "", want: YAMLv3Oracle{}},
		{name: "yamlv3", want: YAMLv3Oracle{}},
		{name: " GOCCY ", want: GoccyOracle{}},
		{name: "serde", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOracle(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownOracle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
