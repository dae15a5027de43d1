package config

type Database struct {
	Path string `mapstructure:"path" json:"path" jsonschema:"description=SQLite database file; empty uses the XDG data directory"`
}

type Log struct {
	LogLevel string `mapstructure:"logLevel" json:"logLevel" validate:"oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR,default=INFO"`
	LogFile  string `mapstructure:"logFile" json:"logFile" jsonschema:"description=Log file path; empty logs to stderr"`
}

type Server struct {
	Name    string `mapstructure:"name" json:"name" validate:"required" jsonschema:"default=fingerstring"`
	Version string `mapstructure:"version" json:"version" validate:"required"`
}

type Store struct {
	PageSize int `mapstructure:"pageSize" json:"pageSize" validate:"min=1,max=10000" jsonschema:"description=Rows read per page when streaming tasks,default=50,minimum=1"`
}

type ConfigSchema struct {
	Database Database `mapstructure:"database" json:"database"`
	Log      Log      `mapstructure:"log" json:"log"`
	Server   Server   `mapstructure:"server" json:"server"`
	Store    Store    `mapstructure:"store" json:"store"`
}
