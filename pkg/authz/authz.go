package authz

import (
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Resource names a protected API surface.
type Resource string

const (
	ResourcePigs          Resource = "pigs"
	ResourceLitters       Resource = "litters"
	ResourceFeedingLogs   Resource = "feeding_logs"
	ResourceSows          Resource = "sows"
	ResourceExpenses      Resource = "expenses"
	ResourceSupplies      Resource = "supplies"
	ResourceSales         Resource = "sales"
	ResourceHealthRecords Resource = "health_records"
	ResourceBookings      Resource = "bookings"
	ResourceReceipts      Resource = "receipts"
	ResourceFeedback      Resource = "feedback"
	ResourceInquiries     Resource = "inquiries"
	ResourceListings      Resource = "listings"
	ResourceReports       Resource = "reports"
	ResourceAdminUsers    Resource = "admin_users"
)

// Action names what the caller wants to do with a resource.
type Action string

const (
	ActionRead    Action = "read"
	ActionWrite   Action = "write"
	ActionDelete  Action = "delete"
	ActionCreate  Action = "create"
	ActionDecide  Action = "decide"
	ActionRespond Action = "respond"
	ActionListAll Action = "list_all"
	ActionManage  Action = "manage"
)

type policyKey struct {
	resource Resource
	action   Action
}

// policies is the whole authorization model. Route middleware consults it
// through Allowed; ownership checks on role-scoped reads stay in services.
var policies = map[policyKey][]enums.UserRole{
	{ResourcePigs, ActionRead}:           enums.StaffRoles(),
	{ResourcePigs, ActionWrite}:          {enums.UserRoleAdmin, enums.UserRoleCaretaker},
	{ResourceLitters, ActionRead}:        enums.StaffRoles(),
	{ResourceLitters, ActionWrite}:       {enums.UserRoleAdmin, enums.UserRoleCaretaker},
	{ResourceLitters, ActionDelete}:      {enums.UserRoleAdmin},
	{ResourceFeedingLogs, ActionRead}:    enums.StaffRoles(),
	{ResourceFeedingLogs, ActionWrite}:   {enums.UserRoleAdmin, enums.UserRoleCaretaker},
	{ResourceSows, ActionRead}:           enums.StaffRoles(),
	{ResourceSows, ActionWrite}:          {enums.UserRoleAdmin, enums.UserRoleCaretaker},
	{ResourceExpenses, ActionRead}:       {enums.UserRoleAdmin, enums.UserRoleProcurement},
	{ResourceExpenses, ActionWrite}:      {enums.UserRoleAdmin, enums.UserRoleProcurement},
	{ResourceSupplies, ActionRead}:       enums.StaffRoles(),
	{ResourceSupplies, ActionWrite}:      {enums.UserRoleAdmin, enums.UserRoleProcurement},
	{ResourceSales, ActionRead}:          {enums.UserRoleAdmin, enums.UserRoleSales},
	{ResourceSales, ActionWrite}:         {enums.UserRoleAdmin, enums.UserRoleSales},
	{ResourceHealthRecords, ActionRead}:  enums.StaffRoles(),
	{ResourceHealthRecords, ActionWrite}: {enums.UserRoleAdmin, enums.UserRoleCaretaker},
	{ResourceBookings, ActionCreate}:     {enums.UserRoleClient},
	{ResourceBookings, ActionDecide}:     {enums.UserRoleAdmin, enums.UserRoleSales},
	{ResourceReceipts, ActionRead}:       {enums.UserRoleAdmin, enums.UserRoleSales},
	{ResourceFeedback, ActionCreate}:     {enums.UserRoleClient},
	{ResourceFeedback, ActionListAll}:    {enums.UserRoleAdmin, enums.UserRoleSales},
	{ResourceFeedback, ActionDelete}:     {enums.UserRoleAdmin},
	{ResourceInquiries, ActionCreate}:    {enums.UserRoleClient},
	{ResourceInquiries, ActionRespond}:   {enums.UserRoleAdmin},
	{ResourceListings, ActionRead}:       enums.StaffRoles(),
	{ResourceListings, ActionWrite}:      {enums.UserRoleAdmin, enums.UserRoleCaretaker},
	{ResourceReports, ActionRead}:        {enums.UserRoleAdmin, enums.UserRoleSales, enums.UserRoleProcurement},
	{ResourceReports, ActionWrite}:       {enums.UserRoleAdmin, enums.UserRoleSales, enums.UserRoleProcurement},
	{ResourceAdminUsers, ActionManage}:   {enums.UserRoleAdmin},
}

// Allowed reports whether role may perform action on resource. Unknown
// pairs are denied.
func Allowed(role enums.UserRole, resource Resource, action Action) bool {
	allowed, ok := policies[policyKey{resource: resource, action: action}]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
