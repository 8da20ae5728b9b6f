package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// Manager 定时任务调度器
type Manager struct {
	c *cron.Cron
}

func NewManager() *Manager {
	return &Manager{
		c: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
	}
}

// Register 按 cron 表达式登记任务
func (m *Manager) Register(spec string, job cron.Job) error {
	_, err := m.c.AddJob(spec, job)
	if err != nil {
		log.Error("register cron job failed", "spec", spec, "err", err)
		return err
	}
	log.Info("cron job registered", "spec", spec)
	return nil
}

func (m *Manager) Start() {
	m.c.Start()
}

// Stop 停止调度并等待在跑的任务收尾
func (m *Manager) Stop() {
	<-m.c.Stop().Done()
}
