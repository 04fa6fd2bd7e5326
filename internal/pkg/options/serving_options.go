package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// ServingOptions configure the HTTP surface.
type ServingOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port" mapstructure:"bind-port"`
	Mode        string `json:"mode" mapstructure:"mode"`
}

func NewServingOptions() *ServingOptions {
	return &ServingOptions{
		BindAddress: "127.0.0.1",
		BindPort:    11870,
		Mode:        "release",
	}
}

// Addr returns the host:port string to listen on.
func (o *ServingOptions) Addr() string {
	return net.JoinHostPort(o.BindAddress, fmt.Sprintf("%d", o.BindPort))
}

func (o *ServingOptions) Validate() []error {
	var errs []error
	if o.BindPort < 1 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("bind port %d out of range [1, 65535]", o.BindPort))
	}
	if o.Mode != "release" && o.Mode != "debug" && o.Mode != "test" {
		errs = append(errs, fmt.Errorf("invalid serving mode %q, must be 'release', 'debug' or 'test'", o.Mode))
	}
	return errs
}

func (o *ServingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "serving.bind-address", o.BindAddress, "IP address to listen on.")
	fs.IntVar(&o.BindPort, "serving.bind-port", o.BindPort, "Port to listen on.")
	fs.StringVar(&o.Mode, "serving.mode", o.Mode, "Gin mode: 'release', 'debug' or 'test'.")
}
