package database

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the SQLite database file, or ":memory:".
	Path string `mapstructure:"path" default:"/config/media_sync.db"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"media_sync"`
	// TimeoutSeconds bounds connection setup and I/O for MySQL.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
