// Package ldapsource reconciles a single named LDAP authentication source
// in Foreman against a caller-supplied desired state.
package ldapsource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Mamut3D/foremanctl/internal/common/errors"
	"github.com/Mamut3D/foremanctl/internal/foreman"
)

// State is the desired lifecycle state of the auth source
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// ServerType is the LDAP server flavor as understood by Foreman
type ServerType string

const (
	ServerTypePosix           ServerType = "posix"
	ServerTypeFreeIPA         ServerType = "free_ipa"
	ServerTypeActiveDirectory ServerType = "active_directory"
)

// Spec is the caller-supplied desired state for one LDAP auth source.
// Optional scalar fields are pointers: nil means "not supplied", which never
// forces a mismatch and never overwrites the remote value. Organizations and
// Locations distinguish nil (leave assignments untouched) from an explicit
// empty list (clear all assignments).
type Spec struct {
	Name             string      `yaml:"name"`
	Host             *string     `yaml:"host"`
	Port             *int        `yaml:"port"`
	TLS              *bool       `yaml:"tls"`
	BaseDN           *string     `yaml:"base_dn"`
	Account          *string     `yaml:"account"`
	AccountPassword  *string     `yaml:"account_password"`
	AttrLogin        *string     `yaml:"attr_login"`
	AttrFirstname    *string     `yaml:"attr_firstname"`
	AttrLastname     *string     `yaml:"attr_lastname"`
	AttrMail         *string     `yaml:"attr_mail"`
	AttrPhoto        *string     `yaml:"attr_photo"`
	OnTheFlyRegister *bool       `yaml:"onthefly_register"`
	UsergroupSync    *bool       `yaml:"usergroup_sync"`
	GroupsBase       *string     `yaml:"groups_base"`
	ServerType       *ServerType `yaml:"server_type"`
	LDAPFilter       *string     `yaml:"ldap_filter"`
	Organizations    []string    `yaml:"organizations"`
	Locations        []string    `yaml:"locations"`
	State            State       `yaml:"state"`
}

// LoadSpec reads and validates a desired-state file
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("could not read spec file: %v", err))
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("could not parse spec file: %v", err))
	}

	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ApplyDefaults fills in the documented defaults: state present, port 389,
// tls false. Fields without a declared default stay unset.
func (s *Spec) ApplyDefaults() {
	if s.State == "" {
		s.State = StatePresent
	}
	if s.Port == nil {
		port := 389
		s.Port = &port
	}
	if s.TLS == nil {
		tls := false
		s.TLS = &tls
	}
}

// Validate checks required fields and enumerations
func (s *Spec) Validate() error {
	if s.Name == "" {
		return apperrors.Validation("name is required")
	}
	if s.State != StatePresent && s.State != StateAbsent {
		return apperrors.Validation(fmt.Sprintf("state must be %q or %q, got %q", StatePresent, StateAbsent, s.State))
	}
	if s.State == StatePresent && (s.Host == nil || *s.Host == "") {
		return apperrors.Validation("host is required")
	}
	if s.ServerType != nil {
		switch *s.ServerType {
		case ServerTypePosix, ServerTypeFreeIPA, ServerTypeActiveDirectory:
		default:
			return apperrors.Validation(fmt.Sprintf("server_type must be one of posix, free_ipa, active_directory, got %q", *s.ServerType))
		}
	}
	return nil
}

// toInput builds the working attribute set sent to Foreman, carrying only
// the fields the caller actually supplied. Association IDs are attached by
// the reconciler after name resolution.
func (s *Spec) toInput() *foreman.AuthSourceLDAPInput {
	in := &foreman.AuthSourceLDAPInput{
		Name:             s.Name,
		Host:             s.Host,
		Port:             s.Port,
		TLS:              s.TLS,
		BaseDN:           s.BaseDN,
		Account:          s.Account,
		AccountPassword:  s.AccountPassword,
		AttrLogin:        s.AttrLogin,
		AttrFirstname:    s.AttrFirstname,
		AttrLastname:     s.AttrLastname,
		AttrMail:         s.AttrMail,
		AttrPhoto:        s.AttrPhoto,
		OnTheFlyRegister: s.OnTheFlyRegister,
		UsergroupSync:    s.UsergroupSync,
		GroupsBase:       s.GroupsBase,
		LDAPFilter:       s.LDAPFilter,
	}
	if s.ServerType != nil {
		st := string(*s.ServerType)
		in.ServerType = &st
	}
	return in
}
