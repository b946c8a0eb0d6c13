// Package rbac maps role sets onto allowed actions. The permission table
// is static; checking is a pure function so it can be tested without any
// HTTP or storage machinery.
package rbac

// Known roles, seeded at install time.
const (
	RoleAdmin    = "admin"
	RolePromoter = "promoter"
	RoleFinance  = "finance"
	RoleTeamLead = "team_lead"
	RoleStaff    = "staff"
)

// Actions gate service operations and routes.
const (
	ActionCustomersView    = "customers.view"
	ActionCustomersManage  = "customers.manage"
	ActionEnquiriesView    = "enquiries.view"
	ActionEnquiriesManage  = "enquiries.manage"
	ActionQuotationsView   = "quotations.view"
	ActionQuotationsManage = "quotations.manage"
	ActionQuotationsReview = "quotations.review"
	ActionOrdersView       = "orders.view"
	ActionOrdersManage     = "orders.manage"
	ActionPettyCashSubmit  = "pettycash.submit"
	ActionPettyCashReview  = "pettycash.review"
	ActionInventoryView    = "inventory.view"
	ActionInventoryManage  = "inventory.manage"
	ActionAttendanceSelf   = "attendance.self"
	ActionAreasView        = "businessareas.view"
	ActionAreasManage      = "businessareas.manage"
	ActionDashboardView    = "dashboard.view"
	ActionReportsView      = "reports.view"
	ActionUploadsCreate    = "uploads.create"
)

var staffActions = []string{
	ActionCustomersView,
	ActionEnquiriesView,
	ActionEnquiriesManage,
	ActionQuotationsView,
	ActionOrdersView,
	ActionPettyCashSubmit,
	ActionInventoryView,
	ActionAttendanceSelf,
	ActionAreasView,
	ActionDashboardView,
	ActionUploadsCreate,
}

var teamLeadActions = append([]string{
	ActionCustomersManage,
	ActionQuotationsManage,
	ActionOrdersManage,
	ActionInventoryManage,
	ActionAreasManage,
	ActionReportsView,
}, staffActions...)

var financeActions = append([]string{
	ActionPettyCashReview,
	ActionQuotationsReview,
	ActionReportsView,
}, staffActions...)

var promoterActions = append([]string{
	ActionReportsView,
	ActionQuotationsReview,
}, staffActions...)

// permissions maps each role to its allowed actions. Admin is handled
// separately: it passes every check.
var permissions = map[string][]string{
	RoleStaff:    staffActions,
	RoleTeamLead: teamLeadActions,
	RoleFinance:  financeActions,
	RolePromoter: promoterActions,
}

// Allowed reports whether any role in the set permits the action.
func Allowed(roles []string, action string) bool {
	for _, role := range roles {
		if role == RoleAdmin {
			return true
		}
		for _, a := range permissions[role] {
			if a == action {
				return true
			}
		}
	}
	return false
}
