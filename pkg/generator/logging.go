package generator

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("chaincomposer/generator", "random chain generation")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
