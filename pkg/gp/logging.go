package gp

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("chaincomposer/gp", "genetic programming trees")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
