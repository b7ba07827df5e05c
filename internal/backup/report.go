package backup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

// The backups cmd runs as a separate process (cron), so it reports its result to the
// main service over a unix socket, and the service turns it into metrics.

const reportAck = "ok"

// Report is the outcome of one backup run.
type Report struct {
	DaysCount int
	Duration  time.Duration
}

func (r Report) encode() string {
	return fmt.Sprintf("days-count::%d||duration::%f", r.DaysCount, r.Duration.Seconds())
}

func decodeReport(msg string) (Report, error) {
	countPart, durationPart, found := strings.Cut(msg, "||")
	if !found {
		return Report{}, fmt.Errorf("invalid report: %s", msg)
	}

	countStr, ok := strings.CutPrefix(countPart, "days-count::")
	if !ok {
		return Report{}, fmt.Errorf("invalid days count info: %s", countPart)
	}
	daysCount, err := strconv.Atoi(countStr)
	if err != nil {
		return Report{}, fmt.Errorf("invalid days count: %w", err)
	}

	durationStr, ok := strings.CutPrefix(durationPart, "duration::")
	if !ok {
		return Report{}, fmt.Errorf("invalid duration info: %s", durationPart)
	}
	durationSec, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return Report{}, fmt.Errorf("invalid duration: %w", err)
	}

	return Report{
		DaysCount: daysCount,
		Duration:  time.Duration(durationSec * float64(time.Second)),
	}, nil
}

// ListenForReports accepts backup reports on the unix socket until ctx is done.
func ListenForReports(
	ctx context.Context,
	socketAddrDir, socketFileName string,
	metricsManager *metrics.Manager,
) (net.Addr, error) {
	socket := filepath.Join(socketAddrDir, socketFileName)
	// leftover from an unclean shutdown
	if err := os.Remove(socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove old socket %s: %w", socket, err)
	}

	listener, err := net.Listen("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("binding to unix socket %s: %w", socket, err)
	}

	if err := os.Chmod(socket, os.ModeSocket|0666); err != nil {
		_ = listener.Close()
		return nil, err
	}

	go func() {
		<-ctx.Done()
		log.Debugln("backup reports listener context done, closing listener")
		_ = listener.Close()
	}()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() == nil {
					log.Errorf("backup reports listener conn accept: %s", err)
				}
				return
			}

			go handleReportConn(conn, metricsManager)
		}
	}()

	return listener.Addr(), nil
}

func handleReportConn(conn net.Conn, metricsManager *metrics.Manager) {
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(time.Now().Add(time.Minute)); err != nil {
		log.Errorf("backup report conn, set deadline: %s", err)
		return
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}

	msg := pkg.BytesToString(buf[:n])
	log.Infof("backup report received: %s", msg)

	report, err := decodeReport(msg)
	if err != nil {
		log.Errorf("backup report conn: %s", err)
		return
	}

	metricsManager.CounterWorkoutsBackedUp.Add(float64(report.DaysCount))
	metricsManager.HistBackupDuration.Observe(report.Duration.Seconds())

	if _, err := conn.Write([]byte(reportAck)); err != nil {
		log.Errorf("backup report conn, send response: %s", err)
	}
}

// SendReport delivers the report to a listening service.
func SendReport(socketAddrDir, socketFileName string, report Report) error {
	socket := filepath.Join(socketAddrDir, socketFileName)
	conn, err := net.DialTimeout("unix", socket, 10*time.Second)
	if err != nil {
		return fmt.Errorf("dial %s: %w", socket, err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return err
	}

	if _, err := conn.Write([]byte(report.encode())); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil {
		return fmt.Errorf("read ack: %w", err)
	}
	if ack := pkg.BytesToString(buf[:n]); ack != reportAck {
		return fmt.Errorf("unexpected ack: %s", ack)
	}

	return nil
}
