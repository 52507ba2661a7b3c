package models

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("chaincomposer/models", "model type scheme")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
