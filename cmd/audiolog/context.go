package main

import (
	"github.com/audiologapp/audiolog/internal/config"
	"github.com/audiologapp/audiolog/internal/logger"
	"github.com/audiologapp/audiolog/internal/store"
)

// commandContext resolves configuration and shared resources lazily, after
// cobra has parsed the persistent flags the resolution depends on.
type commandContext struct {
	dbFlag       *string
	envFileFlag  *string
	logFileFlag  *string
	logLevelFlag *string

	cfg *config.Config
	log *logger.Logger
}

func newCommandContext(dbFlag, envFileFlag, logFileFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		dbFlag:       dbFlag,
		envFileFlag:  envFileFlag,
		logFileFlag:  logFileFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.envFileFlag, config.Flags{
		DBPath:   *c.dbFlag,
		LogFile:  *c.logFileFlag,
		LogLevel: *c.logLevelFlag,
	})
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*logger.Logger, error) {
	if c.log != nil {
		return c.log, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Config{
		FilePath: cfg.LogFile,
		Level:    logger.ParseLevel(cfg.LogLevel),
	})
	if err != nil {
		return nil, err
	}
	c.log = log
	return log, nil
}

// openStore opens the configured database. The caller closes it.
func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DBPath, log.Logger)
}

func (c *commandContext) close() {
	if c.log != nil {
		c.log.Close()
	}
}
