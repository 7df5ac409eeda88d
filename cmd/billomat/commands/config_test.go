package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/billomat/cmd/billomat/commands"
	"github.com/fivetwenty-io/billomat/internal/constants"
)

func readConfig(t *testing.T, path string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	values := make(map[string]interface{})
	require.NoError(t, yaml.Unmarshal(data, &values))

	return values
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	file := commands.ConfigFile{Path: filepath.Join(t.TempDir(), "nested", "config.yml")}

	values, err := file.Load()
	require.NoError(t, err)
	assert.Empty(t, values)

	err = file.Update(t.Context(), func(values map[string]interface{}) error {
		values["billomat_id"] = "acme"

		return nil
	})
	require.NoError(t, err)

	info, err := os.Stat(file.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	values, err = file.Load()
	require.NoError(t, err)
	assert.Equal(t, "acme", values["billomat_id"])

	err = file.Update(t.Context(), func(map[string]interface{}) error {
		return constants.ErrUnknownConfigKey
	})
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestConfigSetShowUnset(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)

	out, err := cli.runRaw("", "config", "set", "billomat_id", "acme")
	require.NoError(t, err)
	assert.Equal(t, "Set billomat_id to acme\n", out)

	out, err = cli.runRaw("", "config", "set", "api_key", "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "Set api_key to ********\n", out)
	assert.NotContains(t, out, "secret-key")

	assert.Equal(t, "secret-key", readConfig(t, cli.config)["api_key"])

	out, err = cli.runRaw("", "config", "show", "-o", "json")
	require.NoError(t, err)

	var settings map[string]string

	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	assert.Equal(t, "acme", settings["billomat_id"])
	assert.Equal(t, commands.Masked, settings["api_key"])
	assert.Equal(t, "json", settings["output"])

	out, err = cli.runRaw("", "config", "unset", "api_key")
	require.NoError(t, err)
	assert.Equal(t, "Unset api_key\n", out)
	assert.NotContains(t, readConfig(t, cli.config), "api_key")
}

func TestConfigSetRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)

	_, err := cli.runRaw("", "config", "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	_, err = cli.runRaw("", "config", "unset", "colour")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	_, err = cli.runRaw("", "config", "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)

	_, err = os.Stat(cli.config)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigFileProvidesCredentials(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)
	cli.fake.SetSingleton("/api/users/myself", `{"user":{"id":"7","email":"jane@example.com"}}`)

	_, err := cli.runRaw("", "config", "set", "billomat_id", "fake")
	require.NoError(t, err)

	_, err = cli.runRaw("", "config", "set", "api_key", cli.fake.APIKey)
	require.NoError(t, err)

	out, err := cli.runRaw("", "users", "myself")
	require.NoError(t, err)
	assert.Contains(t, out, "jane@example.com")
}

func TestConfigLogin(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)
	cli.fake.SetSingleton("/api/users/myself", `{"user":{"id":"7","email":"jane@example.com"}}`)

	out, err := cli.runRaw("fake\n"+cli.fake.APIKey+"\n", "config", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Authenticated as jane@example.com")
	assert.Contains(t, out, "Credentials for fake saved")

	values := readConfig(t, cli.config)
	assert.Equal(t, "fake", values["billomat_id"])
	assert.Equal(t, cli.fake.APIKey, values["api_key"])
}

func TestConfigLoginFailures(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)

	_, err := cli.runRaw("\n", "config", "login")
	require.ErrorIs(t, err, constants.ErrNoBillomatID)

	_, err = cli.runRaw("fake\n\n", "config", "login")
	require.ErrorIs(t, err, constants.ErrEmptyAPIKey)

	_, err = cli.runRaw("fake\nwrong-key\n", "config", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to verify credentials")

	_, err = os.Stat(cli.config)
	require.ErrorIs(t, err, os.ErrNotExist)

	out, err := cli.runRaw("fake\nunchecked\n", "config", "login", "--no-verify")
	require.NoError(t, err)
	assert.Equal(t, "Credentials for fake saved\n", out)
	assert.Equal(t, "unchecked", readConfig(t, cli.config)["api_key"])
}

func TestUsersAndSettings(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)
	cli.fake.SetSingleton("/api/users/myself", `{"user":{"id":"7","email":"jane@example.com","first_name":"Jane"}}`)
	cli.fake.SetSingleton("/api/settings", `{"settings":{"currency_code":"EUR","locale":"de_DE","due_days":"14"}}`)
	cli.fake.Seed(userDescriptor, map[string]interface{}{"email": "jane@example.com", "first_name": "Jane"})
	cli.fake.Seed(userDescriptor, map[string]interface{}{"email": "max@example.com", "first_name": "Max"})

	out, err := cli.run("users", "myself", "-o", "yaml")
	require.NoError(t, err)

	var user map[string]interface{}

	require.NoError(t, yaml.Unmarshal([]byte(out), &user))
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, 7, user["id"])

	out, err = cli.run("users", "list", "--email", "max@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "max@example.com")
	assert.NotContains(t, out, "jane@example.com")

	out, err = cli.run("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "EUR")
	assert.Contains(t, out, "de_DE")
	assert.Contains(t, out, "14")
}

func TestArticlesCommands(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t)

	out, err := cli.run("articles", "list")
	require.NoError(t, err)
	assert.Equal(t, "No articles found\n", out)

	cli.fake.Seed(articleDescriptor, map[string]interface{}{"title": "Consulting hour", "sales_price": 80.0, "currency_code": "EUR"})

	out, err = cli.run("articles", "list", "--title", "Consulting hour")
	require.NoError(t, err)
	assert.Contains(t, out, "Consulting hour")
	assert.Contains(t, out, "80.00 EUR")
}
