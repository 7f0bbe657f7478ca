package cron

func InitCron(mgr *Manager) error {
	mgr.l.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
