package cli

import (
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/spf13/viper"
)

// DefaultGatewayUrl points at a gateway started locally with default
// flags
const DefaultGatewayUrl = "http://127.0.0.1:54321"

// GetGatewayClient creates a gateway client from the command line
// overrides, falling back to the global configuration which seeds the
// viper defaults
func GetGatewayClient(id string) (*gateway.Client, error) {
	gatewayUrl := viper.GetString("gateway-url")
	if gatewayUrl == "" {
		gatewayUrl = DefaultGatewayUrl
	}
	client, err := gateway.NewClient(gateway.NewClientOpts{
		GatewayUrl: gatewayUrl,
		Id:         id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}
	return client, nil
}

// GetActorId returns the operator id recorded on audit entries
func GetActorId() int64 {
	return viper.GetInt64("actor-id")
}

// GetFieldValues collects the field values either from the repeated
// --set flags or by showing the interactive form seeded with the
// provided values; the boolean reports whether the form was shown
func GetFieldValues(binding ResourceBinding, seed map[string]string) (map[string]string, bool, error) {
	assignments := viper.GetStringSlice("set")
	if len(assignments) > 0 {
		values := map[string]string{}
		for name, value := range seed {
			values[name] = value
		}
		for _, assignment := range assignments {
			key, value, found := strings.Cut(assignment, "=")
			if !found {
				return nil, false, fmt.Errorf("failed to parse assignment[%s]: expected key=value notation", assignment)
			}
			values[key] = value
		}
		return values, false, nil
	}
	if seed == nil {
		seed = map[string]string{}
		for _, field := range binding.Fields() {
			seed[field.Name] = field.Default
		}
	}
	values, err := ShowForm(FormOpts{
		Title:  fmt.Sprintf("%s editor", binding.Schema().Name),
		Fields: binding.Fields(),
		Values: seed,
	})
	if err != nil {
		return nil, true, err
	}
	return values, true, nil
}

// GetResourceBinding resolves one resource binding wired with the
// interactive confirmation prompt
func GetResourceBinding(name string) (ResourceBinding, error) {
	client, err := GetGatewayClient(fmt.Sprintf("watchtower/%s", name))
	if err != nil {
		return nil, err
	}
	bindings := NewResourceBindings(NewResourceBindingsOpts{
		Client:  client,
		Auditor: gateway.NewAuditor(client),
		Confirm: ConfirmWithPrompt,
		ActorId: GetActorId(),
	})
	binding, ok := bindings[name]
	if !ok {
		return nil, fmt.Errorf("failed to find resource[%s]", name)
	}
	return binding, nil
}
