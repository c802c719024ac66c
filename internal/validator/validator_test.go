package validator

import (
	"context"
	"testing"

	v10validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderID(t *testing.T) {
	engine := v10validator.New()
	require.NoError(t, engine.RegisterValidation("orderid", OrderID))
	v := New(engine)

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{
			name: "alphanumeric id",
			id:   "ORD1",
		},
		{
			name: "underscores and dashes",
			id:   "TEST_1680349200-1",
		},
		{
			name:    "empty id",
			id:      "",
			wantErr: true,
		},
		{
			name:    "spaces",
			id:      "ORD 1",
			wantErr: true,
		},
		{
			name:    "path characters",
			id:      "../orders",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(context.Background(), tt.id, "orderid")
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			assert.NoError(t, err)
		})
	}
}
