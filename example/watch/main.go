package main

import (
	"context"
	"flag"
	"strings"

	"github.com/QQGoblin/etcdv2-sdk/pkg/concurrency"
	"github.com/QQGoblin/etcdv2-sdk/pkg/etcd"
	"go.uber.org/zap"
)

func main() {

	var host, keys string
	var port int
	flag.StringVar(&host, "host", "127.0.0.1", "etcd host")
	flag.IntVar(&port, "port", etcd.DefaultPort, "etcd client port")
	flag.StringVar(&keys, "keys", "/demo/a,/demo/b", "comma separated keys to watch")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cli, err := etcd.NewClient(host, etcd.WithPort(port))
	if err != nil {
		logger.Fatal("create client", zap.Error(err))
	}

	ctx := context.Background()
	wg := concurrency.NewWaitGroup(4)

	for _, key := range strings.Split(keys, ",") {
		key := key
		wg.BlockAdd()
		go func() {
			defer wg.Done()

			// One blocking long-poll per key: the call returns on the
			// first change after it was issued.
			resp, err := cli.Wait(ctx, key, 0)
			if err != nil {
				logger.Error("wait", zap.String("key", key), zap.Error(err))
				return
			}
			prev := ""
			if resp.PrevNode != nil {
				prev = resp.PrevNode.Value
			}
			logger.Info("key changed",
				zap.String("key", key),
				zap.String("action", resp.Action),
				zap.String("value", resp.Node.Value),
				zap.String("prev", prev),
			)
		}()
	}

	wg.Wait()
}
