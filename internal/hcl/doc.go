// Package hcl provides the concrete HCL implementation of config.Loader.
// It is responsible for parsing a dinner file, checking which attributes the
// user actually wrote, and binding their cty values onto the
// format-agnostic config.File.
//
// A file looks like:
//
//	table {
//	  philosophers  = 5
//	  time_to_die   = 800
//	  time_to_eat   = 200
//	  time_to_sleep = 200
//	  meals         = 7
//	}
//
//	runtime {
//	  poll_interval    = "100us"
//	  monitor_interval = "100us"
//	  odd_ring_delay   = -1
//	}
package hcl
