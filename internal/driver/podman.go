package driver

// podmanProfile differs from docker in exactly the behaviors the podman CLI
// shapes differently: the exec verb in the login template, and the absence
// of an ansible connection plugin. Every lifecycle operation is the shared
// engine implementation, unmodified.
//
// ConnectionVars is nil: ansible has no podman connection plugin available
// to us yet, so connection metadata is reported as an unsupported
// capability rather than an empty option set.
func podmanProfile() Profile {
	return Profile{
		DriverName: "podman",
		Command:    "podman",
		LoginTemplate: "podman exec " +
			"-e COLUMNS={columns} " +
			"-e LINES={lines} " +
			"-e TERM=xterm " +
			"-ti {instance} bash",
	}
}

// NewPodmanDriver creates the Podman driver.
func NewPodmanDriver(opts Options) Driver {
	return newEngine(podmanProfile(), opts)
}
