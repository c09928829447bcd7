// Package config defines the rules of a dinner, the format-agnostic model of
// a configuration file, and the Loader interface used to read one.
//
// Rules is the only configuration the simulation core ever sees. It is built
// once, validated by NewRules, and passed by value afterwards. Concrete file
// formats, such as HCL, live in separate packages.
package config
