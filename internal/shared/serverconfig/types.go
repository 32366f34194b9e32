package serverconfig

type Config struct {
	HTTPServer  HTTPServerConfig  `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer  GRPCServerConfig  `yaml:"grpcserver" mapstructure:"grpcserver"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	MongoDB     MongoDBConfig     `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL       MySQLConfig       `yaml:"mysql" mapstructure:"mysql"`
	SQLite      SQLiteConfig      `yaml:"sqlite" mapstructure:"sqlite"`
	Persistence PersistenceConfig `yaml:"persistence" mapstructure:"persistence"`
	Game        GameConfig        `yaml:"game" mapstructure:"game"`
	JWTSecret   string            `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// NeedSecret WS 连接握手后启用 AES 加密
	NeedSecret bool `yaml:"need_secret" mapstructure:"need_secret"`
}

type GRPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	Collection      string `yaml:"collection" mapstructure:"collection"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	ShowSQL  bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

type SQLiteConfig struct {
	// Path 为空时使用内存库
	Path    string `yaml:"path" mapstructure:"path"`
	ShowSQL bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

// PersistenceConfig Driver 取值 memory / mongodb / mysql / sqlite
type PersistenceConfig struct {
	Driver          string `yaml:"driver" mapstructure:"driver"`
	FlushIntervalMs int    `yaml:"flush_interval_ms" mapstructure:"flush_interval_ms"`
	AskTimeoutMs    int    `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	IdleTimeoutS    int    `yaml:"idle_timeout_s" mapstructure:"idle_timeout_s"`
}

type GameConfig struct {
	StartingMoney int `yaml:"starting_money" mapstructure:"starting_money"`
	// AllowFixedDice 允许请求携带 dice 指定点数，仅用于调试
	AllowFixedDice bool `yaml:"allow_fixed_dice" mapstructure:"allow_fixed_dice"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
