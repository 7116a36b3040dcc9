// Package main 启动 torrentvault.
package main

import (
	"fmt"
	"os"

	"github.com/yeisme/torrentvault/pkg/cmd"
)

//	@title			TorrentVault API
//	@version		1.0
//	@description	TorrentVault 接收种子文件与发行信息，清洗种子、按月份落盘，并在一个事务中写入分组、艺人与发行记录。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
