package utils

import (
	"fmt"
	"math/rand"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// GenerateRandomManager 生成一个随机的分店经理账号。
func GenerateRandomManager(password string, emailDomainName string, branchID int64) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleBranchManager,
		BranchID:     &branchID,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(52)]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var dishPrefixes = []string{
	"红烧", "清蒸", "香辣", "糖醋", "干煸", "椒盐", "蒜蓉", "麻辣", "酱爆", "葱油",
}
var dishBases = []string{
	"牛肉面", "小笼包", "排骨饭", "豆腐煲", "鸡翅", "鱼片", "虾仁", "茄子", "年糕", "馄饨",
}
var productCategories = []string{"早餐", "午市", "晚市", "饮品", "小食"}

func GenerateRandomProduct() *domain.Product {
	return &domain.Product{
		Name:        dishPrefixes[rand.Intn(len(dishPrefixes))] + dishBases[rand.Intn(len(dishBases))],
		Description: "测试菜品",
		Category:    productCategories[rand.Intn(len(productCategories))],
		BasePrice:   int64(rand.Intn(80)+10) * 100,
		IsActive:    true,
	}
}

// 用 Fisher-Yates 洗牌算法来生成随机的适用星期子集，0 表示星期日
func GenerateRandomDaysOfWeek() domain.DaysOfWeek {
	days := domain.DaysOfWeek{0, 1, 2, 3, 4, 5, 6}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

var scheduleTimezones = []string{"UTC", "Asia/Shanghai", "Asia/Singapore", "Asia/Tokyo"}

// GenerateRandomSchedule 随机生成一条时段规则，约一半是固定时段、一半是季节时段。
func GenerateRandomSchedule() *domain.Schedule {
	s := &domain.Schedule{
		Timezone: scheduleTimezones[rand.Intn(len(scheduleTimezones))],
		IsActive: true,
	}

	if rand.Intn(2) == 0 {
		startHour := rand.Intn(23)
		duration := rand.Intn(23-startHour) + 1

		s.Name = "时段" + GenerateRandomID(2, 3)
		s.Type = domain.ScheduleTypeTimeSlot
		s.StartTime = fmt.Sprintf("%02d:%02d", startHour, rand.Intn(30))
		s.EndTime = fmt.Sprintf("%02d:%02d", startHour+duration, rand.Intn(30)+30)
		s.DaysOfWeek = GenerateRandomDaysOfWeek()
	} else {
		startMonth := rand.Intn(6) + 1
		endMonth := startMonth + rand.Intn(6) + 1

		s.Name = "季节" + GenerateRandomID(2, 3)
		s.Type = domain.ScheduleTypeSeasonal
		s.StartDate = fmt.Sprintf("2025-%02d-01", startMonth)
		s.EndDate = fmt.Sprintf("2025-%02d-28", endMonth)
	}

	return s
}
