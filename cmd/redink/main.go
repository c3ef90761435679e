package main

import (
	"flag"

	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/cmd/redink/helper"
)

// @title						Redink API
// @version					1.0.0
// @description				This is the API server for Redink, a multi-tenant content collaboration backend.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				访问 /v1/auth/login 并获取 TOKEN 后，填入 'Bearer ${TOKEN}' 以访问受保护的接口
func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	// Initialize configuration
	configInit := helper.NewConfigInitializer()
	backendConfig := configInit.GetBackendConfig()

	// Load debug environment if needed
	if err := configInit.LoadDebugEnvironment(); err != nil {
		klog.Fatalf("Failed to load env: %s", err)
	}

	// Initialize register config and dependencies
	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		klog.Fatalf("Failed to register config: %s\n", err)
	}

	// Setup server runner
	serverRunner := helper.NewServerRunner(backendConfig)

	// Expose the liveness probe endpoint
	serverRunner.StartProbeServer()

	// Start HTTP server, blocks until a shutdown signal arrives
	serverRunner.StartServer(registerConfig)
}
