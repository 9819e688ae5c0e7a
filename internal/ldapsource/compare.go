package ldapsource

import (
	"github.com/Mamut3D/foremanctl/internal/foreman"
)

// CompareKeys is the fixed set of attributes that participate in change
// detection. The bind password is deliberately absent: it cannot be read
// back from Foreman, so it never determines changed-ness.
var CompareKeys = []string{
	"host",
	"port",
	"base_dn",
	"account",
	"attr_login",
	"attr_firstname",
	"attr_lastname",
	"attr_mail",
	"attr_photo",
	"onthefly_register",
	"usergroup_sync",
	"ldap_filter",
	"tls",
	"groups_base",
	"server_type",
}

// Matches reports whether the remote record already satisfies every supplied
// field of the working attribute set. Fields left unset in the input are
// never compared. Resolved organization and location ID sets are always
// compared for set equality when supplied, independent of keys.
func Matches(in *foreman.AuthSourceLDAPInput, current *foreman.AuthSourceLDAP, keys []string) bool {
	for _, key := range keys {
		if !fieldMatches(key, in, current) {
			return false
		}
	}
	if in.OrganizationIDs != nil && !equalIDSet(*in.OrganizationIDs, current.OrganizationIDs()) {
		return false
	}
	if in.LocationIDs != nil && !equalIDSet(*in.LocationIDs, current.LocationIDs()) {
		return false
	}
	return true
}

func fieldMatches(key string, in *foreman.AuthSourceLDAPInput, current *foreman.AuthSourceLDAP) bool {
	switch key {
	case "host":
		return in.Host == nil || *in.Host == current.Host
	case "port":
		return in.Port == nil || *in.Port == current.Port
	case "tls":
		return in.TLS == nil || *in.TLS == current.TLS
	case "base_dn":
		return in.BaseDN == nil || *in.BaseDN == current.BaseDN
	case "account":
		return in.Account == nil || *in.Account == current.Account
	case "attr_login":
		return in.AttrLogin == nil || *in.AttrLogin == current.AttrLogin
	case "attr_firstname":
		return in.AttrFirstname == nil || *in.AttrFirstname == current.AttrFirstname
	case "attr_lastname":
		return in.AttrLastname == nil || *in.AttrLastname == current.AttrLastname
	case "attr_mail":
		return in.AttrMail == nil || *in.AttrMail == current.AttrMail
	case "attr_photo":
		return in.AttrPhoto == nil || *in.AttrPhoto == current.AttrPhoto
	case "onthefly_register":
		return in.OnTheFlyRegister == nil || *in.OnTheFlyRegister == current.OnTheFlyRegister
	case "usergroup_sync":
		return in.UsergroupSync == nil || *in.UsergroupSync == current.UsergroupSync
	case "groups_base":
		return in.GroupsBase == nil || *in.GroupsBase == current.GroupsBase
	case "server_type":
		return in.ServerType == nil || *in.ServerType == current.ServerType
	case "ldap_filter":
		return in.LDAPFilter == nil || *in.LDAPFilter == current.LDAPFilter
	default:
		// unknown keys never force a mismatch
		return true
	}
}

// equalIDSet compares two identifier lists as sets: order is irrelevant and
// duplicates collapse
func equalIDSet(a, b []int) bool {
	as := make(map[int]struct{}, len(a))
	for _, id := range a {
		as[id] = struct{}{}
	}
	bs := make(map[int]struct{}, len(b))
	for _, id := range b {
		bs[id] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for id := range as {
		if _, ok := bs[id]; !ok {
			return false
		}
	}
	return true
}
