package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"greenmarket/internal/models"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name    string
		role    models.AccountType
		caller  int64
		owner   int64
		action  Action
		allowed bool
	}{
		{"seller deletes own product", models.AccountTypeSeller, 5, 5, ActionDeleteProduct, true},
		{"seller deletes other's product", models.AccountTypeSeller, 5, 9, ActionDeleteProduct, false},
		{"admin deletes any product", models.AccountTypeAdmin, 1, 9, ActionDeleteProduct, true},
		{"buyer deletes product", models.AccountTypeBuyer, 5, 5, ActionDeleteProduct, false},
		{"seller updates own product", models.AccountTypeSeller, 5, 5, ActionUpdateProduct, true},
		{"admin cannot edit listings", models.AccountTypeAdmin, 1, 9, ActionUpdateProduct, false},
		{"admin sets profit margin", models.AccountTypeAdmin, 1, 9, ActionSetProfitMargin, true},
		{"seller sets profit margin", models.AccountTypeSeller, 5, 5, ActionSetProfitMargin, false},
		{"admin moderates account", models.AccountTypeAdmin, 1, 0, ActionModerateAccount, true},
		{"buyer moderates account", models.AccountTypeBuyer, 5, 0, ActionModerateAccount, false},
		{"owner views own whitney block", models.AccountTypeBuyer, 7, 7, ActionViewWhitneyBlock, true},
		{"stranger views whitney block", models.AccountTypeBuyer, 7, 8, ActionViewWhitneyBlock, false},
		{"admin deletes order", models.AccountTypeAdmin, 1, 0, ActionDeleteOrder, true},
		{"seller deletes order", models.AccountTypeSeller, 5, 0, ActionDeleteOrder, false},
		{"admin views statistics", models.AccountTypeAdmin, 1, 0, ActionViewOrderStats, true},
		{"buyer views statistics", models.AccountTypeBuyer, 5, 0, ActionViewOrderStats, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, Allow(tt.role, tt.caller, tt.owner, tt.action))
		})
	}
}
