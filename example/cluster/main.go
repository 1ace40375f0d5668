package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/QQGoblin/etcdv2-sdk/pkg/etcd"
	"k8s.io/klog/v2"
)

func main() {

	var host, username, password string
	var port int
	flag.StringVar(&host, "host", "127.0.0.1", "etcd host")
	flag.IntVar(&port, "port", etcd.DefaultPort, "etcd client port")
	flag.StringVar(&username, "username", "", "basic auth user")
	flag.StringVar(&password, "password", "", "basic auth password")
	flag.Parse()

	opts := []etcd.Option{etcd.WithPort(port)}
	if username != "" {
		opts = append(opts, etcd.WithCredentials(username, password))
	}
	cli, err := etcd.NewClient(host, opts...)
	if err != nil {
		klog.Fatal(err)
	}

	ctx := context.Background()

	version, err := cli.Version(ctx)
	if err != nil {
		klog.Fatal(err)
	}
	if server, err := version.Field("etcdserver"); err == nil {
		s, _ := server.Str()
		fmt.Printf("etcd server version: %s\n", s)
	}

	members, err := cli.Members(ctx)
	if err != nil {
		klog.Fatal(err)
	}
	for _, m := range members {
		fmt.Printf("member %s (%s) peers=%v clients=%v\n", m.ID, m.Name, m.PeerURLs, m.ClientURLs)
	}

	enabled, err := cli.AuthStatus(ctx)
	if err != nil {
		klog.Fatal(err)
	}
	fmt.Printf("auth enabled: %v\n", enabled)

	users, err := cli.Users(ctx)
	if err != nil {
		klog.Warningf("list users: %v", err)
	}
	for _, u := range users {
		fmt.Printf("user %s roles=%v\n", u.User, u.Roles)
	}

	roles, err := cli.Roles(ctx)
	if err != nil {
		klog.Warningf("list roles: %v", err)
	}
	for _, r := range roles {
		fmt.Printf("role %s\n", r.Role)
	}

	stats, err := cli.LeaderStats(ctx)
	if err != nil {
		klog.Warningf("leader stats: %v", err)
		return
	}
	if leader, err := stats.Field("leader"); err == nil {
		s, _ := leader.Str()
		fmt.Printf("leader: %s\n", s)
	}
}
