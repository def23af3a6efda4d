// check_embed 列出内置数据文件并校验内置规则
package main

import (
	"crypto/md5"
	"fmt"
	"os"

	"github.com/decker502/brickdigger/data"
	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/embedded"
)

func main() {
	embedded.Init(data.FS)

	files, err := embedded.Glob("data/*")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, name := range files {
		content, err := embedded.ReadFile(name)
		if err != nil {
			fmt.Printf("%s: %v\n", name, err)
			continue
		}
		fmt.Printf("%-28s %6d bytes  md5 %x\n", name, len(content), md5.Sum(content))
	}

	content, err := embedded.ReadFile(config.DefaultRulesPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	rules, err := config.ParseGameRules(content)
	if err != nil {
		fmt.Printf("Embedded rules invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Embedded rules OK: level %dx%d, %d axes min, axe pack %d for %d coins\n",
		rules.Level.BaseWidth, rules.Level.Height, rules.Level.MinAxes,
		rules.Economy.AxePack, rules.Economy.AxePrice)
}
