package ldapsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Mamut3D/foremanctl/internal/common/errors"
)

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ldap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSpecAppliesDefaults(t *testing.T) {
	path := writeSpecFile(t, `
name: Test LDAP
host: ldap.example.com
`)

	spec, err := LoadSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "Test LDAP", spec.Name)
	assert.Equal(t, StatePresent, spec.State)
	require.NotNil(t, spec.Port)
	assert.Equal(t, 389, *spec.Port)
	require.NotNil(t, spec.TLS)
	assert.False(t, *spec.TLS)
}

func TestLoadSpecFullDocument(t *testing.T) {
	path := writeSpecFile(t, `
name: Test LDAP
host: ldap.example.com
port: 636
tls: true
base_dn: dc=example,dc=com
account: cn=bind,dc=example,dc=com
account_password: secret
attr_login: uid
attr_firstname: givenName
attr_lastname: sn
attr_mail: mail
onthefly_register: true
usergroup_sync: false
groups_base: ou=groups,dc=example,dc=com
server_type: free_ipa
ldap_filter: (objectClass=posixAccount)
organizations:
  - ACME
locations:
  - Prague
  - Brno
state: present
`)

	spec, err := LoadSpec(path)
	require.NoError(t, err)

	assert.Equal(t, 636, *spec.Port)
	assert.True(t, *spec.TLS)
	assert.Equal(t, "secret", *spec.AccountPassword)
	assert.Equal(t, ServerTypeFreeIPA, *spec.ServerType)
	assert.Equal(t, []string{"ACME"}, spec.Organizations)
	assert.Equal(t, []string{"Prague", "Brno"}, spec.Locations)
	assert.False(t, *spec.UsergroupSync)
}

func TestLoadSpecAssociationListSemantics(t *testing.T) {
	t.Run("absent key stays nil", func(t *testing.T) {
		spec, err := LoadSpec(writeSpecFile(t, `
name: Test LDAP
host: ldap.example.com
`))
		require.NoError(t, err)
		assert.Nil(t, spec.Organizations)
		assert.Nil(t, spec.Locations)
	})

	t.Run("explicit empty list is non-nil", func(t *testing.T) {
		spec, err := LoadSpec(writeSpecFile(t, `
name: Test LDAP
host: ldap.example.com
organizations: []
`))
		require.NoError(t, err)
		assert.NotNil(t, spec.Organizations)
		assert.Empty(t, spec.Organizations)
		assert.Nil(t, spec.Locations)
	})
}

func TestLoadSpecErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "host: ldap.example.com\n"},
		{"missing host when present", "name: Test LDAP\nstate: present\n"},
		{"bad state", "name: Test LDAP\nhost: ldap.example.com\nstate: ensure\n"},
		{"bad server_type", "name: Test LDAP\nhost: ldap.example.com\nserver_type: openldap\n"},
		{"not yaml", "{{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpec(writeSpecFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.IsErrorCode(err, apperrors.ErrValidation))
		})
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorCode(err, apperrors.ErrValidation))
}

func TestValidateHostOptionalWhenAbsent(t *testing.T) {
	spec := &Spec{Name: "Test LDAP", State: StateAbsent}
	assert.NoError(t, spec.Validate())
}

func TestSpecToInputCarriesOnlySuppliedFields(t *testing.T) {
	spec := &Spec{
		Name:       "Test LDAP",
		Host:       strPtr("ldap.example.com"),
		ServerType: (*ServerType)(strPtr("posix")),
		State:      StatePresent,
	}

	in := spec.toInput()

	assert.Equal(t, "Test LDAP", in.Name)
	require.NotNil(t, in.Host)
	assert.Equal(t, "ldap.example.com", *in.Host)
	require.NotNil(t, in.ServerType)
	assert.Equal(t, "posix", *in.ServerType)

	assert.Nil(t, in.Port)
	assert.Nil(t, in.BaseDN)
	assert.Nil(t, in.AccountPassword)
	assert.Nil(t, in.OrganizationIDs)
	assert.Nil(t, in.LocationIDs)
}
