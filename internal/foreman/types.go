// Package foreman provides a client for the Foreman API v2
package foreman

// Ref is a name/identifier pair as returned inside Foreman association lists
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AuthSourceLDAP represents an LDAP authentication source as stored in Foreman.
// The bind password is write-only and never read back.
type AuthSourceLDAP struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Host             string `json:"host"`
	Port             int    `json:"port"`
	TLS              bool   `json:"tls"`
	BaseDN           string `json:"base_dn"`
	Account          string `json:"account"`
	AttrLogin        string `json:"attr_login"`
	AttrFirstname    string `json:"attr_firstname"`
	AttrLastname     string `json:"attr_lastname"`
	AttrMail         string `json:"attr_mail"`
	AttrPhoto        string `json:"attr_photo"`
	OnTheFlyRegister bool   `json:"onthefly_register"`
	UsergroupSync    bool   `json:"usergroup_sync"`
	GroupsBase       string `json:"groups_base"`
	ServerType       string `json:"server_type"`
	LDAPFilter       string `json:"ldap_filter"`
	Organizations    []Ref  `json:"organizations,omitempty"`
	Locations        []Ref  `json:"locations,omitempty"`
}

// OrganizationIDs returns the identifiers of the organizations the auth
// source is assigned to
func (a *AuthSourceLDAP) OrganizationIDs() []int {
	return refIDs(a.Organizations)
}

// LocationIDs returns the identifiers of the locations the auth source is
// assigned to
func (a *AuthSourceLDAP) LocationIDs() []int {
	return refIDs(a.Locations)
}

func refIDs(refs []Ref) []int {
	ids := make([]int, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

// AuthSourceLDAPInput is the write shape for create and update calls. Nil
// fields are omitted from the request body so that unsupplied attributes
// never overwrite remote values. Association ID lists use slice pointers:
// nil leaves assignments untouched, a pointer to an empty slice clears them.
type AuthSourceLDAPInput struct {
	Name             string  `json:"name"`
	Host             *string `json:"host,omitempty"`
	Port             *int    `json:"port,omitempty"`
	TLS              *bool   `json:"tls,omitempty"`
	BaseDN           *string `json:"base_dn,omitempty"`
	Account          *string `json:"account,omitempty"`
	AccountPassword  *string `json:"account_password,omitempty"`
	AttrLogin        *string `json:"attr_login,omitempty"`
	AttrFirstname    *string `json:"attr_firstname,omitempty"`
	AttrLastname     *string `json:"attr_lastname,omitempty"`
	AttrMail         *string `json:"attr_mail,omitempty"`
	AttrPhoto        *string `json:"attr_photo,omitempty"`
	OnTheFlyRegister *bool   `json:"onthefly_register,omitempty"`
	UsergroupSync    *bool   `json:"usergroup_sync,omitempty"`
	GroupsBase       *string `json:"groups_base,omitempty"`
	ServerType       *string `json:"server_type,omitempty"`
	LDAPFilter       *string `json:"ldap_filter,omitempty"`
	OrganizationIDs  *[]int  `json:"organization_ids,omitempty"`
	LocationIDs      *[]int  `json:"location_ids,omitempty"`
}

// Organization is a Foreman organization
type Organization struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Location is a Foreman location
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a Foreman user account
type User struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}
