package docker

import "fmt"

const (
	// DefaultBinary is the docker cli looked up on the PATH.
	DefaultBinary = "docker"
	// DefaultLsof is the lsof binary looked up on the PATH.
	DefaultLsof = "lsof"
	// DefaultImage is the ElasticMQ image run by [Runtime.Run].
	DefaultImage = "softwaremill/elasticmq"

	// ContainerAPIPort is the port ElasticMQ serves the SQS api on inside the container.
	ContainerAPIPort = 9324
	// ContainerUIPort is the port ElasticMQ serves its ui on inside the container.
	ContainerUIPort = 9325
)

// RunOptions are the host side settings of a container.
type RunOptions struct {
	APIPort int
	UIPort  int
	Image   string
}

func (o RunOptions) withDefaults() RunOptions {
	if o.APIPort == 0 {
		o.APIPort = ContainerAPIPort
	}
	if o.UIPort == 0 {
		o.UIPort = ContainerUIPort
	}
	if o.Image == "" {
		o.Image = DefaultImage
	}
	return o
}

func (o RunOptions) args() []string {
	return []string{
		"run",
		"-itd",
		fmt.Sprintf("-p%d:%d", o.APIPort, ContainerAPIPort),
		fmt.Sprintf("-p%d:%d", o.UIPort, ContainerUIPort),
		o.Image,
	}
}
