// Package policy centralizes role-based authorization so controllers do not
// repeat inline role checks.
package policy

import "greenmarket/internal/models"

type Action string

const (
	ActionUpdateProduct     Action = "update_product"
	ActionDeleteProduct     Action = "delete_product"
	ActionSetProfitMargin   Action = "set_profit_margin"
	ActionTagProduct        Action = "tag_product"
	ActionModerateAccount   Action = "moderate_account"
	ActionModerateReview    Action = "moderate_review"
	ActionManageCategory    Action = "manage_category"
	ActionDeleteOrder       Action = "delete_order"
	ActionViewOrderStats    Action = "view_order_statistics"
	ActionViewWhitneyBlock  Action = "view_whitney_block"
	ActionWriteWhitneyBlock Action = "write_whitney_block"
)

// Allow decides whether a caller may perform an action on a resource.
// ownerID is the resource owner's user ID, or 0 when ownership does not
// apply. Admins may do anything except act as a seller on another seller's
// listing updates.
func Allow(role models.AccountType, callerID, ownerID int64, action Action) bool {
	if role == models.AccountTypeAdmin {
		// Sellers keep exclusive control over listing edits.
		return action != ActionUpdateProduct
	}

	switch action {
	case ActionUpdateProduct:
		return role == models.AccountTypeSeller && callerID == ownerID
	case ActionDeleteProduct:
		return role == models.AccountTypeSeller && callerID == ownerID
	case ActionViewWhitneyBlock, ActionWriteWhitneyBlock:
		return callerID == ownerID
	case ActionSetProfitMargin, ActionTagProduct, ActionModerateAccount,
		ActionModerateReview, ActionManageCategory, ActionDeleteOrder,
		ActionViewOrderStats:
		return false
	default:
		return false
	}
}
