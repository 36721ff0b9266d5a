package qsim

import "github.com/spf13/viper"

/*
Config carries the runtime knobs of the simulator. Values are read from the
environment with the QSIM_ prefix so the same binary can be tuned per launch:

	QSIM_KERNEL_WORKERS  goroutines used to split local kernels (0 = serial)
	QSIM_VERBOSE         trace exchanges and collectives
*/
type Config struct {
	KernelWorkers int
	Verbose       bool
}

func NewConfig() *Config {
	viper.SetEnvPrefix("qsim")
	viper.AutomaticEnv()
	viper.SetDefault("kernel_workers", 0)
	viper.SetDefault("verbose", false)

	return &Config{
		KernelWorkers: viper.GetInt("kernel_workers"),
		Verbose:       viper.GetBool("verbose"),
	}
}
