package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantRef bool
		wantTxt string
	}{
		{"plain literal", "~> 4.0", false, "~> 4.0"},
		{"reference", "$AF_VERSION", true, "AF_VERSION"},
		{"escaped dollar", "$$HOME", false, "$HOME"},
		{"lone dollar is literal", "$", false, "$"},
		{"empty", "", false, ""},
		{"dollar inside literal", "a$b", false, "a$b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.raw)
			assert.Equal(t, tt.wantRef, v.IsReference())
			if tt.wantRef {
				assert.Equal(t, tt.wantTxt, v.Name())
			} else {
				got, ok := Resolve(v, nil)
				assert.True(t, ok)
				assert.Equal(t, tt.wantTxt, got)
			}
			assert.Equal(t, tt.raw, v.String(), "String must round trip the declaration form")
		})
	}
}

func TestResolve(t *testing.T) {
	vars := map[string]string{"AF_VERSION": "~> 4.0", "EMPTY": ""}

	got, ok := Resolve(Reference("AF_VERSION"), vars)
	assert.True(t, ok)
	assert.Equal(t, "~> 4.0", got)

	got, ok = Resolve(Reference("EMPTY"), vars)
	assert.True(t, ok, "a variable set to the empty string is still bound")
	assert.Equal(t, "", got)

	got, ok = Resolve(Reference("MISSING"), vars)
	assert.False(t, ok)
	assert.Equal(t, "", got)

	got, ok = Resolve(Literal("$NOT_A_REF"), vars)
	assert.True(t, ok)
	assert.Equal(t, "$NOT_A_REF", got)
}

func TestResolver(t *testing.T) {
	r := NewResolver(map[string]string{"TAG": "1.2.3"})

	assert.Equal(t, "1.2.3", r.Resolve(Parse("$TAG")))
	assert.Equal(t, "", r.Resolve(Parse("$BRANCH")))
	assert.Equal(t, "", r.Resolve(Parse("$COMMIT")))
	assert.Equal(t, "", r.Resolve(Parse("$BRANCH")))
	assert.Equal(t, "lit", r.Resolve(Parse("lit")))

	assert.Equal(t, []string{"BRANCH", "COMMIT"}, r.Missing())
}

func TestValueZero(t *testing.T) {
	assert.True(t, Value{}.IsZero())
	assert.True(t, Parse("").IsZero())
	assert.False(t, Parse("$X").IsZero())
	assert.Equal(t, "", Literal("x").Name())
}
