package chain

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("chaincomposer/chain", "pipeline chains")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
