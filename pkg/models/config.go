package models

// SMTPConfig holds outbound mail settings for contact-form notifications.
// When Password is empty the notifier runs in simulation mode: submissions
// are accepted and logged but no mail is sent.
type SMTPConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	From     string `yaml:"from" mapstructure:"from"`
	To       string `yaml:"to" mapstructure:"to"`
}

// Config holds system-wide settings read from .taskboardrc via Viper.
type Config struct {
	ListenAddr      string       `yaml:"listen_addr" mapstructure:"listen_addr"`
	AdminPassword   string       `yaml:"admin_password" mapstructure:"admin_password"`
	DefaultPriority TaskPriority `yaml:"default_priority" mapstructure:"default_priority"`
	DefaultStatus   TaskStatus   `yaml:"default_status" mapstructure:"default_status"`
	SMTP            SMTPConfig   `yaml:"smtp" mapstructure:"smtp"`
}
