package config

import "github.com/spf13/viper"

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	LogLevel *string
	LogFile  *string
	DBPath   *string
}

func (o *RuntimeOverrides) apply(v *viper.Viper, sources map[string][]configSource) {
	if o == nil {
		return
	}
	set := func(key string, value *string) {
		if value == nil {
			return
		}
		v.Set(key, *value)
		sources[key] = append(sources[key], configSource{value: *value, source: "command line flag"})
	}
	set("log.loglevel", o.LogLevel)
	set("log.logfile", o.LogFile)
	set("database.path", o.DBPath)
}
