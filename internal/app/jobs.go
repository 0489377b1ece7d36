package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type schedJobs struct {
	sched *cron.Cron
}

func (j *schedJobs) stop() {
	if j.sched != nil {
		j.sched.Stop()
	}
}

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	sched := cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	spec := a.appConfig.Storage.BackupSpec
	if spec == "" {
		spec = "@daily"
	}
	var err error
	_, err = sched.AddFunc(spec, func() {
		a.SchedBackupTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = sched.AddFunc("@every 30s", func() {
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	sched.Start()
	a.sched = &schedJobs{sched: sched}
}

// SchedBackupTask copies the snapshot file into the backup dir.
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if err := a.BackupNow(); err != nil {
		zap.L().Error("snapshot backup failed", zap.Error(err))
	}
}

// BackupNow writes a timestamped copy of the snapshot file.
func (a *Application) BackupNow() error {
	dir := filepath.Join(a.appConfig.System.Workdir, a.appConfig.Storage.BackupDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("storefront-%s.db", time.Now().Format("20060102150405"))
	return a.storage.Backup(filepath.Join(dir, name))
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		zap.L().Debug("system cpu use", zap.Int64("pct100", int64(_cpuuse[0]*100)))
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		zap.L().Debug("system mem use", zap.Uint64("mb", _meminfo.Used/1024/1024))
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}
	cpuuse, err := p.CPUPercent()
	if err == nil {
		zap.L().Debug("storefront cpu use", zap.Int64("pct100", int64(cpuuse*100)))
	}
	meminfo, err := p.MemoryInfo()
	if err == nil {
		zap.L().Debug("storefront mem use", zap.Uint64("mb", meminfo.RSS/1024/1024))
	}
}
