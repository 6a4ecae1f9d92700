package hook

import "go.uber.org/fx"

// Module provides the dispatcher shared by payment use cases.
var Module = fx.Provide(NewDispatcher)
