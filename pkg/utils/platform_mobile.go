//go:build mobile

package utils

// gomobile bind 构建的安卓包
const mobileBuild = true
