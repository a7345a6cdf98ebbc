package service

// instruction asks the model to extract the characters written in the attached
// base64-encoded image.
const instruction = "Base64でエンコードされた画像を添付するのでそこに記載されている文字を抽出してください。"

const promptSeparator = "\n"
