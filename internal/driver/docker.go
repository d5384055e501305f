package driver

// dockerProfile is the baseline backend. Its connection metadata targets
// ansible's docker connection plugin.
func dockerProfile() Profile {
	return Profile{
		DriverName: "docker",
		Command:    "docker",
		LoginTemplate: "docker exec " +
			"-e COLUMNS={columns} " +
			"-e LINES={lines} " +
			"-e TERM=xterm " +
			"-ti {instance} bash",
		ConnectionVars: func(instanceName string) map[string]string {
			return map[string]string{"ansible_connection": "docker"}
		},
	}
}

// NewDockerDriver creates the Docker driver.
func NewDockerDriver(opts Options) Driver {
	return newEngine(dockerProfile(), opts)
}
