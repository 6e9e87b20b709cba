package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/everest-site/pkg/config"
)

// NewPool crea el pool de conexiones contra la base de Supabase.
// Con DATABASE_URL se usa esa URL; si no, se arma el DSN desde DB_HOST, DB_PORT, etc.
// En ambos casos se fuerza IPv4 cuando es posible (Docker suele no tener IPv6 y el
// host de Supabase puede resolver solo AAAA).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = dialIPv4

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// ConnString DSN a usar, con el host ya resuelto a IPv4 si existe.
func ConnString(cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		return databaseURLWithIPv4(cfg.DatabaseURL)
	}
	dsnCfg := cfg
	if ipv4, err := resolveIPv4(cfg.Host); err == nil {
		dsnCfg.Host = ipv4
	}
	return dsnCfg.DSN()
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	ipv4, err := resolveIPv4(host)
	if err != nil {
		// sin IPv4 conocida: dial normal
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// resolveIPv4 prueba el resolver del sistema y luego uno público (8.8.8.8), porque
// dentro de un contenedor el DNS puede devolver solo IPv6.
func resolveIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	if ip, err := lookupIPv4(net.DefaultResolver, host); err == nil {
		return ip, nil
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{Timeout: 3 * time.Second}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	return lookupIPv4(public, host)
}

func lookupIPv4(r *net.Resolver, host string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("%s sin IPv4", host)
}

func databaseURLWithIPv4(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := resolveIPv4(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
