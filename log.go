package clverify

import (
	"github.com/privacybydesign/clverify/keystore"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	keystore.Logger = Logger
}
