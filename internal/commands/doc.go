// Package commands implements the struct-update command line.
//
// Commands:
//
//	struct-update gen [patterns...]      generate UpdateStruct methods
//	struct-update inspect [patterns...]  print parsed directives and planned updates as YAML
//	struct-update version                print the version
//
// Settings are resolved by viper with the precedence flags, environment
// (STRUCTUPDATE_*), config file (.structupdate.yaml), defaults.
package commands
