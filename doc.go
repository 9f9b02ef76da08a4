/*
Package boot is the root of go-mvc-boot, a convention-driven request
dispatcher for HTTP services in Go.

Official Repository: https://github.com/SaiNageswarS/go-mvc-boot

go-mvc-boot routes a request to either a Go func or a "Controller@action"
target and renders the result:
- Convention parsing of (Namespace\)*NameController@action targets
- Reflection-based dependency injection with cycle detection
- Dispatch with resolved dependencies winning over request params
- JSON and text renderers with an optional CORS policy
- Fluent server builder with metrics, health and rate limiting

Quick Start:

	go install github.com/SaiNageswarS/go-mvc-boot/cmd/mvc-boot@latest
	mvc-boot routes
	mvc-boot serve --config app.ini

Package Import:

	import "github.com/SaiNageswarS/go-mvc-boot/server"
	import "github.com/SaiNageswarS/go-mvc-boot/di"
	import "github.com/SaiNageswarS/go-mvc-boot/convention"

Author: SaiNageswarS
License: Apache-2.0
*/
package boot
