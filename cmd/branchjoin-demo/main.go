// Command branchjoin-demo loads a small fixture of concrete values and
// folds them through branchjoin.MapAndJoin, printing the resulting nested
// conditional tree. It exercises the core end to end against
// internal/testrealm, the way cmd/test_production exercised the schema
// engine against a YAML fixture.
package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neamatmim/prepack/branchjoin"
	"github.com/neamatmim/prepack/internal/testrealm"
)

type fixture struct {
	Values []int `yaml:"values"`
}

func main() {
	path := "cmd/branchjoin-demo/testdata/values.in.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	yamlData, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var fx fixture
	if err := yaml.Unmarshal(yamlData, &fx); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if len(fx.Values) < 2 {
		fmt.Println("Error: fixture must list at least two values")
		os.Exit(1)
	}

	realm := testrealm.New()
	opts := branchjoin.DefaultJoinOptions()
	logger := branchjoin.NewLogger(branchjoin.ParseLogLevel("info"), os.Stderr)

	values := make([]branchjoin.Value, len(fx.Values))
	for i, v := range fx.Values {
		values[i] = testrealm.V(v)
	}

	n := 0
	result, err := branchjoin.MapAndJoin(
		context.Background(),
		realm,
		opts,
		logger,
		values,
		func(v branchjoin.Value) branchjoin.Value {
			n++
			return testrealm.Unknown(fmt.Sprintf("matches[%d]", n))
		},
		func(ctx context.Context, v branchjoin.Value) (*branchjoin.Completion, error) {
			return branchjoin.NormalCompletion(v), nil
		},
		realm.Factory(),
		realm.ThrowFactory(),
		realm.BindingFactory(),
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("joined result: %v\n", result)

	out, err := yaml.Marshal(map[string]any{"result": fmt.Sprintf("%v", result)})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("as YAML:\n%s", out)
}
