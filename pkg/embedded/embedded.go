package embedded

import (
	_ "embed"
)

// Cantus firmus catalog seeded into the database and served by the CLI
//
//go:embed data/cantus_firmi.yaml
var CantusFirmiYAML []byte
