package constants

// Permission strings issued by the identity provider
const (
	// Admin permissions
	PermSuperAdminFull = "swiftship.super-admin.full-permit"
	PermAdminFull      = "swiftship.admin.full-permit"
	PermOperatorFull   = "swiftship.operator.full-permit"

	// Customer permissions
	PermCustomerFull = "swiftship.customer.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	OperatorPermissions = []string{
		PermSuperAdminFull,
		PermAdminFull,
		PermOperatorFull,
	}
)
