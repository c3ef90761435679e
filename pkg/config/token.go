package config

type TokenConf struct {
	AccessTokenExpiryMinute int
	RefreshTokenExpiryHour  int
	AccessTokenSecret       string
	RefreshTokenSecret      string
}

func NewTokenConf() *TokenConf {
	cfg := GetConfig()
	conf := &TokenConf{
		AccessTokenExpiryMinute: cfg.Auth.AccessTokenTTL,
		RefreshTokenExpiryHour:  cfg.Auth.RefreshTokenTTL,
		AccessTokenSecret:       cfg.Auth.AccessTokenSecret,
		RefreshTokenSecret:      cfg.Auth.RefreshTokenSecret,
	}
	if conf.AccessTokenExpiryMinute <= 0 {
		conf.AccessTokenExpiryMinute = 15
	}
	if conf.RefreshTokenExpiryHour <= 0 {
		conf.RefreshTokenExpiryHour = 168
	}
	return conf
}
