package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/QQGoblin/etcdv2-sdk/pkg/etcd"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"k8s.io/klog/v2"
)

func main() {

	var host, key string
	var port int
	flag.StringVar(&host, "host", "127.0.0.1", "etcd host")
	flag.IntVar(&port, "port", etcd.DefaultPort, "etcd client port")
	flag.StringVar(&key, "key", "/demo/"+uuid.New().String(), "key to exercise")
	flag.Parse()

	cli, err := etcd.NewClient(host, etcd.WithPort(port))
	if err != nil {
		klog.Fatal(err)
	}

	ctx := context.Background()

	node, err := cli.Set(ctx, key, "hello", etcd.NoTTL)
	if err != nil {
		klog.Fatal(err)
	}
	fmt.Printf("set %s -> %s (index %d)\n", node.Key, node.Value, node.ModifiedIndex)

	node, err = cli.Get(ctx, key)
	if err != nil {
		klog.Fatal(err)
	}
	fmt.Printf("get %s -> %s\n", node.Key, node.Value)

	if _, err := cli.Update(ctx, key, "hello again", etcd.NoTTL); err != nil {
		klog.Fatal(err)
	}

	if _, err := cli.Set(ctx, key, "short-lived", 1); err != nil {
		klog.Fatal(err)
	}
	fmt.Println("waiting for the 1s ttl to expire")
	if err := cli.WaitKeyGone(ctx, key, 500*time.Millisecond, 10, clockwork.NewRealClock()); err != nil {
		klog.Fatal(err)
	}
	fmt.Printf("%s expired\n", key)
}
